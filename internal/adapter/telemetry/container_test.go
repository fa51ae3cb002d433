package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/romansndlr/remix-todos/pkg/config"
)

func TestNewContainer_WithoutExporters(t *testing.T) {
	RegisterTestingT(t)

	cfg := config.GetDefaultConfig()
	cfg.Telemetry.OTLPEndpoint = ""
	cfg.Telemetry.MetricsPort = ""

	container, err := NewContainer(context.Background(), cfg, config.NewNopLogger("todos", ""))

	Expect(err).To(BeNil())
	Expect(container.MetricsServer).To(BeNil())
	Expect(container.NewTelemetryProbe()).ToNot(BeNil())

	container.StartMetricsServer()

	container.AppMetrics.RecordTodoOperation(context.Background(), "create", "success")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	container.MetricsHandler().ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(w.Body.String()).To(ContainSubstring(`todo_operations_total{operation="create",outcome="success"} 1`))
	Expect(w.Body.String()).To(ContainSubstring("go_goroutines"))

	Expect(container.Shutdown(context.Background())).To(Succeed())
}

func TestNewContainer_MetricsServerConfigured(t *testing.T) {
	RegisterTestingT(t)

	cfg := config.GetDefaultConfig()
	cfg.Telemetry.MetricsPort = "9999"

	container, err := NewContainer(context.Background(), cfg, config.NewNopLogger("todos", ""))

	Expect(err).To(BeNil())
	Expect(container.MetricsServer).ToNot(BeNil())
	Expect(container.MetricsServer.Addr).To(Equal(":9999"))
	Expect(container.Shutdown(context.Background())).To(Succeed())
}
