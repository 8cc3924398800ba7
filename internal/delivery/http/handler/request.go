package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"

	"github.com/gorilla/mux"
)

// Query parameter names shared by the listings.
const (
	queryPage     = "p"
	queryPerPage  = "q"
	queryArchived = "a"
)

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(name))
	return n
}

func queryBool(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

// queryList accepts both repeated parameters and comma separated values.
func queryList(r *http.Request, name string) []string {
	var values []string
	for _, raw := range r.URL.Query()[name] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

func pagination(r *http.Request) entity.Pagination {
	return entity.NewPagination(queryInt(r, queryPage), queryInt(r, queryPerPage))
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// statementRequest reads the statements registry query: services, statuses, sortBy, order
// and paging.
func statementRequest(r *http.Request) dto.AppointmentListRequest {
	page := pagination(r)
	statuses := queryList(r, "statuses")
	for i := range statuses {
		statuses[i] = strings.ToUpper(statuses[i])
	}
	return dto.AppointmentListRequest{
		Page:     page.Page,
		PerPage:  page.PerPage,
		Services: queryList(r, "services"),
		Statuses: statuses,
		SortBy:   r.URL.Query().Get("sortBy"),
		Order:    r.URL.Query().Get("order"),
	}
}
