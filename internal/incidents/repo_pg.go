package incidents

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

// List returns incidents matching the filter, newest first.
func (r *PGRepo) List(ctx context.Context, filter Filter) ([]Incident, error) {
	conditions := []string{"1=1"}
	var args []any

	appendArg := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.DateFrom != nil {
		appendArg("opened_at >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		appendArg("opened_at <= $%d", *filter.DateTo)
	}
	if filter.BusinessLine != "" {
		appendArg("business_line = $%d", filter.BusinessLine)
	}
	if filter.ApplicationName != "" {
		appendArg("application_name = $%d", filter.ApplicationName)
	}
	if filter.MajorIncidentOnly {
		conditions = append(conditions, "major_incident = TRUE")
	}
	if filter.RootCauseCategory != "" {
		appendArg("root_cause_category = $%d", filter.RootCauseCategory)
	}
	if filter.ResolutionCategory != "" {
		appendArg("resolution_category = $%d", filter.ResolutionCategory)
	}

	query := `
SELECT id, incident_number, business_line, application_name, major_incident,
       root_cause_category, resolution_category, description, opened_at, resolved_at
FROM incidents
WHERE ` + strings.Join(conditions, " AND ") + `
ORDER BY opened_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Incident
	for rows.Next() {
		var in Incident
		var rootCause, resolution, description sql.NullString
		var resolvedAt sql.NullTime
		if err := rows.Scan(
			&in.ID,
			&in.IncidentNumber,
			&in.BusinessLine,
			&in.ApplicationName,
			&in.MajorIncident,
			&rootCause,
			&resolution,
			&description,
			&in.OpenedAt,
			&resolvedAt,
		); err != nil {
			return nil, err
		}
		if rootCause.Valid {
			in.RootCauseCategory = rootCause.String
		}
		if resolution.Valid {
			in.ResolutionCategory = resolution.String
		}
		if description.Valid {
			in.Description = description.String
		}
		if resolvedAt.Valid {
			in.ResolvedAt = &resolvedAt.Time
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
