package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	a := NoopAnalysisHooks{}
	a.OnAnalyzeStart(ctx, 120)
	a.OnAnalyzeComplete(ctx, "schema", 4, 0, time.Millisecond, nil)

	g := NoopGraphHooks{}
	g.OnBuild(ctx, 10, 8, time.Millisecond)
	g.OnLayoutStart(ctx, "layered", 10)
	g.OnLayoutComplete(ctx, "layered", time.Second, nil)
	g.OnExportStart(ctx, "svg")
	g.OnExportComplete(ctx, "svg", 2048, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "layout", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/api/graph")
	h.OnResponse(ctx, "POST", "/api/graph", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Analysis().(NoopAnalysisHooks); !ok {
		t.Error("Analysis() should return NoopAnalysisHooks by default")
	}
	if _, ok := Graph().(NoopGraphHooks); !ok {
		t.Error("Graph() should return NoopGraphHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	custom := &testGraphHooks{}
	SetGraphHooks(custom)
	if Graph() != custom {
		t.Error("SetGraphHooks should set custom hooks")
	}

	SetGraphHooks(nil)
	if Graph() != custom {
		t.Error("SetGraphHooks(nil) should keep the current hooks")
	}

	Reset()
	if _, ok := Graph().(NoopGraphHooks); !ok {
		t.Error("Reset should restore no-op hooks")
	}
}

func TestLogHooks(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	NewLogHooks(logger).Register()

	ctx := context.Background()
	Analysis().OnAnalyzeComplete(ctx, "mixins", 3, 1, time.Millisecond, nil)
	Analysis().OnAnalyzeComplete(ctx, "", 0, 0, time.Millisecond, errors.New("boom"))
	Graph().OnBuild(ctx, 10, 8, time.Millisecond)
	Cache().OnCacheMiss(ctx, "layout")
	HTTP().OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"analyze done", "shape=mixins", "analyze failed", "graph built", "nodes=10", "cache miss", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

type testGraphHooks struct{ NoopGraphHooks }
