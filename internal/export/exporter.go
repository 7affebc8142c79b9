// Package export writes the current grade data out of the application:
// an XLSX workbook for people and a Redis summary hash for other tools.
package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradehub/internal/views"
)

type Publisher interface {
	Publish(ctx context.Context, st views.DashboardState, now time.Time) error
}

type Exporter struct {
	dashboard *views.Dashboard
	xlsxPath  string
	publisher Publisher
}

// NewExporter exports whatever the dashboard loads. publisher may be nil.
func NewExporter(dashboard *views.Dashboard, xlsxPath string, publisher Publisher) *Exporter {
	return &Exporter{
		dashboard: dashboard,
		xlsxPath:  xlsxPath,
		publisher: publisher,
	}
}

// Run loads a fresh dashboard snapshot and exports it. A degraded snapshot
// is refused so the previous workbook and summary stay in place.
func (e *Exporter) Run(ctx context.Context) error {
	e.dashboard.Load(ctx)
	st := e.dashboard.State()
	if len(st.Degraded) > 0 {
		return fmt.Errorf("dashboard degraded (%s), not exporting", strings.Join(st.Degraded, ", "))
	}

	if err := WriteXLSX(e.xlsxPath, st.Grades, st.Modules); err != nil {
		return err
	}
	logger.Info.Printf("Wrote %d grades to %s", len(st.Grades), e.xlsxPath)

	if e.publisher == nil {
		return nil
	}
	return e.publisher.Publish(ctx, st, time.Now())
}
