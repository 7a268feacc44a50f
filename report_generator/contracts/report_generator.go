package contracts

import "github.com/giarcheuli/docparser/report_generator/models"

// IReportGenerator renders one run's results into a markdown report session
// on disk and returns the session directory.
type IReportGenerator interface {
	GenerateReports(data *models.ReportData) (string, error)
}
