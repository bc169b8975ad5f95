package events

var JobIngestedTopic = "JobIngestedEvent"

var CompanyEnrichedTopic = "CompanyEnrichedEvent"

var IngestFinishedTopic = "IngestFinishedEvent"

type JobIngested struct {
	JobID int
	Title string
	Url   string
}

type CompanyEnriched struct {
	CompanyID   int
	Name        string
	LinkedinUrl string
}

type IngestFinished struct {
	RowsReceived     int
	JobsCreated      int
	CompaniesCreated int
	RowsSkipped      int
}
