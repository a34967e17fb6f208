// Package docs Prosecution Case API.
//
// Documentation of the Prosecution Case API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - basic
//
//    SecurityDefinitions:
//    basic:
//      type: basic
//
// swagger:meta
package docs

import (
	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/models"
)

// swagger:route GET /api/v1/dashboard dashboard dashboardID
// Gets the dashboard of the signed-in user.
// responses:
//   200: dashboardResponse

// Shows counts, urgent cases, caseless prisoners and unread alerts
// swagger:response dashboardResponse
type dashboardResponseWrapper struct {
	// in:body
	Body casework.Dashboard
}

// swagger:route GET /api/v1/cases/{case_id} cases caseByID
// Gets a single case by ID.
// responses:
//   200: caseByIDResponse
//   404: errorMessageResponse

// Shows a single case by the given {case_id}
// swagger:response caseByIDResponse
type caseByIDResponseWrapper struct {
	// in:body
	Body models.Case
}

// swagger:route GET /api/v1/prisoners/caseless prisoners caselessPrisoners
// Lists prisoners in custody without a case, longest waiting first.
// responses:
//   200: caselessPrisonersResponse

// Shows the caseless prisoners with days in custody
// swagger:response caselessPrisonersResponse
type caselessPrisonersResponseWrapper struct {
	// in:body
	Body []casework.CaselessPrisoner
}

// swagger:route GET /api/v1/reports reports reportID
// Gets the office-wide report.
// responses:
//   200: reportResponse

// Shows case and prisoner totals by status, prosecutor and station
// swagger:response reportResponse
type reportResponseWrapper struct {
	// in:body
	Body casework.Report
}

// Error returned for failed lookups and bad requests
// swagger:response errorMessageResponse
type errorMessageResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
