// internal/workers/data-access/search-roster/queries/builders.go
package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
)

// RosterQuery describes one search against the employee roster index.
type RosterQuery struct {
	Index      string
	QueryType  string
	Filters    map[string]interface{}
	Department string
	Pagination struct {
		From int
		Size int
	}
}

// BuildQuery builds an Elasticsearch search request for the roster index.
func BuildQuery(esClient *elasticsearch.Client, rq RosterQuery) (*esapi.SearchRequest, error) {
	if rq.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch rq.QueryType {
	case "roster_search":
		queryBody = buildRosterSearchQuery(rq)
	case "department_roster":
		queryBody = buildDepartmentRosterQuery(rq)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, rq.QueryType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index:  []string{rq.Index},
		Body:   strings.NewReader(string(body)),
		From:   &rq.Pagination.From,
		Size:   &rq.Pagination.Size,
		Pretty: true,
	}

	return &req, nil
}

// buildRosterSearchQuery builds the free-text roster search. Name matches
// weigh heaviest, then email, then department and position.
func buildRosterSearchQuery(rq RosterQuery) map[string]interface{} {
	boolQuery := make(map[string]interface{})
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if keywords, ok := rq.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"full_name^3", "email^2", "department", "position"},
				"type":   "best_fields",
			},
		})
	}

	if dept, ok := rq.Filters["department"].(string); ok && dept != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"department": dept},
		})
	} else if rq.Department != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"department": rq.Department},
		})
	}

	if location, ok := rq.Filters["workLocation"].(string); ok && location != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"work_location": location},
		})
	}

	if progRange, ok := rq.Filters["progressRange"].(map[string]interface{}); ok {
		rangeClause := map[string]interface{}{}
		if min, ok := toFloat(progRange["min"]); ok {
			rangeClause["gte"] = min
		}
		if max, ok := toFloat(progRange["max"]); ok {
			rangeClause["lte"] = max
		}
		if len(rangeClause) > 0 {
			filterClauses = append(filterClauses, map[string]interface{}{
				"range": map[string]interface{}{"progress": rangeClause},
			})
		}
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery["must"] = mustClauses
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}

	if sortBy, ok := rq.Filters["sortBy"].(string); ok {
		switch sortBy {
		case "progress":
			query["sort"] = []map[string]interface{}{{"progress": "desc"}}
		case "start_date":
			query["sort"] = []map[string]interface{}{{"start_date": "asc"}}
		case "name":
			query["sort"] = []map[string]interface{}{{"full_name.keyword": "asc"}}
		}
	}

	return query
}

// buildDepartmentRosterQuery lists one department's employees.
func buildDepartmentRosterQuery(rq RosterQuery) map[string]interface{} {
	dept := rq.Department
	if d, ok := rq.Filters["department"].(string); ok && d != "" {
		dept = d
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{"department": dept},
					},
				},
			},
		},
		"sort": []map[string]interface{}{{"full_name.keyword": "asc"}},
	}

	return query
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
