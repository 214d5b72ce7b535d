package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/xiaoshicae/xactor/xactor"
	"github.com/xiaoshicae/xactor/xgin"
	"github.com/xiaoshicae/xactor/xgin/options"
	"github.com/xiaoshicae/xactor/xpipeline"
	"github.com/xiaoshicae/xactor/xrecipe"

	"github.com/gin-gonic/gin"

	. "github.com/bytedance/mockey"
	. "github.com/smartystreets/goconvey/convey"
)

type nopDispatchMonitor struct{}

func (nopDispatchMonitor) OnDispatchDone(context.Context, *xactor.DispatchEvent) {}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)

	system, err := xrecipe.NewSystem(xactor.WithMonitor(nopDispatchMonitor{}))
	So(err, ShouldBeNil)
	system.MustAddActor(xactor.NewFuncActor("echo", "Echo", func(context.Context, *xactor.Message) (any, error) {
		return map[string]any{"echoed": true}, nil
	}))
	system.MustAddActor(xactor.NewFuncActor("fail", "Fail", func(context.Context, *xactor.Message) (any, error) {
		return nil, errors.New("boom")
	}))
	system.MustAddActor(xactor.NewFuncActor("slow", "Slow", func(ctx context.Context, _ *xactor.Message) (any, error) {
		time.Sleep(300 * time.Millisecond)
		return map[string]any{}, nil
	}))

	registry, err := xrecipe.NewRegistry(system)
	So(err, ShouldBeNil)
	for _, d := range []*xpipeline.Definition{
		{Name: "Echo", Stages: []*xpipeline.StageDefinition{{Name: "echo", Actor: "echo"}}},
		{Name: "Strict", Stages: []*xpipeline.StageDefinition{{Name: "echo", Actor: "echo", Validate: `has(data.name)`}}},
		{Name: "Fail", Stages: []*xpipeline.StageDefinition{{Name: "fail", Actor: "fail"}}},
		{Name: "Slow", Stages: []*xpipeline.StageDefinition{{Name: "slow", Actor: "slow"}}},
	} {
		p, err := d.Build(system)
		So(err, ShouldBeNil)
		So(registry.Register(p), ShouldBeNil)
	}

	analyzer, err := xrecipe.NewAnalyzerWith(system, registry)
	So(err, ShouldBeNil)

	e := gin.New()
	NewHandler(analyzer).Register(e)
	return e
}

func do(e *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	e.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

const pancakesJSON = `{
	"name": "Pancakes",
	"ingredients": [
		{"name": "flour", "amount": 1, "unit": "cup"},
		{"name": "milk", "amount": 200, "unit": "ml"},
		{"name": "egg", "amount": 1, "unit": "whole"}
	],
	"instructions": ["Whisk flour, milk and egg", "Fry in butter until golden"],
	"servings": 4
}`

func TestHandler(t *testing.T) {
	PatchConvey("TestHandler", t, func() {
		Mock(xpipeline.GetConfig).Return(&xpipeline.Config{Timeout: "100ms", DisableMonitor: true}).Build()
		e := newTestEngine()

		Convey("health", func() {
			w, out := do(e, http.MethodGet, "/health", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(out["status"], ShouldEqual, "ok")
		})

		Convey("actors", func() {
			w := httptest.NewRecorder()
			e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/actors", nil))
			So(w.Code, ShouldEqual, http.StatusOK)

			var actors []*ActorInfo
			So(json.Unmarshal(w.Body.Bytes(), &actors), ShouldBeNil)
			So(len(actors), ShouldEqual, 10)
			ids := make([]string, 0, len(actors))
			for _, a := range actors {
				ids = append(ids, a.ID)
			}
			So(ids, ShouldContain, "echo")
			So(ids, ShouldContain, xrecipe.NutritionID)
		})

		Convey("pipelines", func() {
			w := httptest.NewRecorder()
			e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/pipelines", nil))
			So(w.Code, ShouldEqual, http.StatusOK)

			var pipelines []*PipelineInfo
			So(json.Unmarshal(w.Body.Bytes(), &pipelines), ShouldBeNil)
			So(pipelines[0].Name, ShouldEqual, xrecipe.RecipeProcessing)
			So(pipelines[0].Stages[0].Actor, ShouldEqual, xrecipe.ProcessorID)
			So(pipelines[2].Name, ShouldEqual, "Echo")
		})

		Convey("process", func() {
			w, out := do(e, http.MethodPost, "/api/v1/pipelines/Echo/process", `{"name":"soup"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(out["echoed"], ShouldEqual, true)
			So(out["name"], ShouldEqual, "soup")
			So(out[xpipeline.ProcessedByKey], ShouldHaveLength, 1)

			w, out = do(e, http.MethodPost, "/api/v1/pipelines/"+url.PathEscape(xrecipe.RecipeProcessing)+"/process", pancakesJSON)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(out, ShouldContainKey, "calories")
		})

		Convey("process errors", func() {
			for _, c := range []struct {
				path, body string
				status     int
			}{
				{"/api/v1/pipelines/Echo/process", `{bad`, http.StatusBadRequest},
				{"/api/v1/pipelines/Echo/process", `null`, http.StatusBadRequest},
				{"/api/v1/pipelines/Echo/process", `{"processedBy":"bad"}`, http.StatusBadRequest},
				{"/api/v1/pipelines/Unknown/process", `{}`, http.StatusNotFound},
				{"/api/v1/pipelines/Strict/process", `{"other":1}`, http.StatusUnprocessableEntity},
				{"/api/v1/pipelines/Fail/process", `{}`, http.StatusBadGateway},
				{"/api/v1/pipelines/Slow/process", `{}`, http.StatusGatewayTimeout},
			} {
				w, out := do(e, http.MethodPost, c.path, c.body)
				So(w.Code, ShouldEqual, c.status)
				So(out["error"], ShouldNotBeEmpty)
			}
		})

		Convey("analyze", func() {
			w, out := do(e, http.MethodPost, "/api/v1/recipes/analyze", pancakesJSON)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(out, ShouldContainKey, "calories")
			So(out, ShouldContainKey, "sustainabilityScore")
			So(out, ShouldContainKey, "season")
			So(out[xpipeline.ProcessedByKey], ShouldHaveLength, 3)

			w, _ = do(e, http.MethodPost, "/api/v1/recipes/analyze", `{"name":"Empty","instructions":["boil"]}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			w, _ = do(e, http.MethodPost, "/api/v1/recipes/analyze", `[]`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestStatusOf(t *testing.T) {
	PatchConvey("TestStatusOf", t, func() {
		step := &xpipeline.StepError{Pipeline: "p", Stage: "s", ActorID: "a",
			Err: &xactor.ActorExecutionError{ActorID: "a", Err: &xrecipe.RecipeValidationError{Field: "ingredients"}}}

		So(statusOf(fmt.Errorf("%w", xrecipe.ErrPipelineNotFound)), ShouldEqual, http.StatusNotFound)
		So(statusOf(&xpipeline.StageValidationError{}), ShouldEqual, http.StatusUnprocessableEntity)
		So(statusOf(fmt.Errorf("%w", xpipeline.ErrProcessTimeout)), ShouldEqual, http.StatusGatewayTimeout)
		So(statusOf(context.DeadlineExceeded), ShouldEqual, http.StatusGatewayTimeout)
		So(statusOf(step), ShouldEqual, http.StatusBadGateway)
		So(statusOf(&xactor.ActorNotFoundError{ActorID: "x"}), ShouldEqual, http.StatusBadGateway)
		So(statusOf(&xrecipe.RecipeValidationError{Field: "name"}), ShouldEqual, http.StatusBadRequest)
		So(statusOf(fmt.Errorf("wrap: %w", xpipeline.ErrInvalidProvenance)), ShouldEqual, http.StatusBadRequest)
		So(statusOf(errors.New("other")), ShouldEqual, http.StatusInternalServerError)
	})
}

func TestNewServer(t *testing.T) {
	PatchConvey("TestNewServer", t, func() {
		Mock(xpipeline.GetConfig).Return(&xpipeline.Config{Timeout: "1s", DisableMonitor: true}).Build()
		Mock(xgin.GetConfig).Return(&xgin.Config{}).Build()

		analyzer, err := xrecipe.NewAnalyzer(xactor.WithMonitor(nopDispatchMonitor{}))
		So(err, ShouldBeNil)

		e := NewServer(analyzer, options.EnableLogMiddleware(false)).Engine()
		paths := map[string]bool{}
		for _, r := range e.Routes() {
			paths[r.Method+" "+r.Path] = true
		}
		So(paths["GET /health"], ShouldBeTrue)
		So(paths["GET /api/v1/actors"], ShouldBeTrue)
		So(paths["POST /api/v1/pipelines/:name/process"], ShouldBeTrue)
		So(paths["GET /swagger/*any"], ShouldBeTrue)

		w := httptest.NewRecorder()
		e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Body.String(), ShouldContainSubstring, "/api/v1/recipes/analyze")
	})
}
