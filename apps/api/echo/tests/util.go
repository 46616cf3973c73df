package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	echoapi "github.com/trezcool/studentlogs/apps/api/echo"
	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/core/course"
	"github.com/trezcool/studentlogs/core/studentlog"
	logsvc "github.com/trezcool/studentlogs/services/logger"
	"github.com/trezcool/studentlogs/storage/database"
	"github.com/trezcool/studentlogs/tests"
)

var fixedNow = time.Date(2024, time.September, 3, 14, 5, 9, 0, time.UTC)

func testConfig() *core.Config {
	return &core.Config{
		AppName:  "Student Logs",
		Env:      "TEST",
		TestMode: true,
		Server:   core.ServerConfig{DisableReqLogs: true},
		Database: core.DatabaseConfig{Engine: database.EngineMemory},
	}
}

func testLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "API : ", 0), conf)
	logger.Enable(false)
	return logger
}

type testApp struct {
	*echoapi.Server
	stores *database.Stores
}

// setup starts an app over a fresh memory store.
func setup(t *testing.T) testApp {
	conf := testConfig()
	logger := testLogger(conf)

	stores, err := database.Open(context.Background(), conf, logger)
	if err != nil {
		t.Fatalf("database.Open(): %v", err)
	}
	t.Cleanup(func() { _ = stores.Close() })

	validate := testutil.NewValidator()
	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			CourseSvc:  course.NewService(stores.Courses, validate),
			LogSvc:     studentlog.NewServiceMock(stores.Logs, validate, func() time.Time { return fixedNow }),
			Translator: core.NewTranslator(),
		},
	)
	return testApp{Server: server, stores: stores}
}

type httpTest struct {
	name        string
	method      string
	path        string
	body        []byte
	wantCode    int
	wantData    []byte
	wantMessage string // redirects to the error page carrying this message
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// checkErrorRedirect asserts rec redirects to the error page with message.
func checkErrorRedirect(t *testing.T, rec *httptest.ResponseRecorder, message string) {
	if rec.Code != http.StatusFound {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusFound)
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("url.Parse(Location): %v", err)
	}
	assert.Equal(t, "/error", loc.Path)
	assert.Equal(t, message, loc.Query().Get("message"))
}

func runHTTPTests(t *testing.T, app http.Handler, tests []httpTest) {
	for _, tt := range tests {
		if tt.method == "" {
			tt.method = http.MethodGet
		}
		if tt.wantCode == 0 && tt.wantMessage == "" {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			if tt.wantMessage != "" {
				checkErrorRedirect(t, rec, tt.wantMessage)
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}
