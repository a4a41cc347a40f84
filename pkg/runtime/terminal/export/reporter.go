// Package export renders reports in machine readable form.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kothscore/helios/pkg/adapters"
	"github.com/kothscore/helios/pkg/models/domain"
)

type Reporter struct {
	writer io.Writer
	indent string
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		indent: "  ",
	}
}

func (c *Reporter) Handle(report *domain.Report) error {
	enc := json.NewEncoder(c.writer)
	enc.SetIndent("", c.indent)
	if err := enc.Encode(adapters.MapDomainReportToAPI(report)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
