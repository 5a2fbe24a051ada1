package documents

import (
	"strconv"
	"strings"
	"time"
)

// searchMaxRows caps search results regardless of filters.
const searchMaxRows = 100

// recentCount is the number of documents shown in statistics.
const recentCount = 5

const selectColumns = `id, title, description, file_type, file_data, category,
owner_name, land_type, location, extracted_text, summary, auto_category,
keywords, notes, uploaded_by, created_at, updated_at`

// searchColumns are matched with OR when searching. Keywords are stored
// as a JSON array string, so a plain substring match covers them too.
var searchColumns = []string{
	"title", "description", "extracted_text", "owner_name", "location", "keywords",
}

func buildListQuery(filter Filter) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT " + selectColumns + " FROM documents")

	var args []any
	var preds []string
	if filter.Category != "" {
		preds = append(preds, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.LandType != "" {
		preds = append(preds, "land_type = ?")
		args = append(args, filter.LandType)
	}
	if len(preds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(preds, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC")
	if filter.Limit > 0 {
		sb.WriteString(" LIMIT " + strconv.Itoa(filter.Limit))
	}
	return sb.String(), args
}

func buildSearchQuery(query string, filter Filter) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT " + selectColumns + " FROM documents WHERE (")

	like := "%" + query + "%"
	args := make([]any, 0, len(searchColumns)+2)
	for i, col := range searchColumns {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		sb.WriteString(col + " LIKE ?")
		args = append(args, like)
	}
	sb.WriteString(")")

	if filter.Category != "" {
		sb.WriteString(" AND category = ?")
		args = append(args, filter.Category)
	}
	if filter.LandType != "" {
		sb.WriteString(" AND land_type = ?")
		args = append(args, filter.LandType)
	}
	sb.WriteString(" ORDER BY created_at DESC LIMIT " + strconv.Itoa(searchMaxRows))
	return sb.String(), args
}

// buildUpdateQuery renders a patch into a SET clause over the allowed
// columns only. ok is false when the patch is empty.
func buildUpdateQuery(id string, patch Patch, now time.Time) (query string, args []any, ok bool) {
	cols := []struct {
		name  string
		value *string
	}{
		{"title", patch.Title},
		{"description", patch.Description},
		{"category", patch.Category},
		{"owner_name", patch.OwnerName},
		{"land_type", patch.LandType},
		{"location", patch.Location},
		{"notes", patch.Notes},
	}

	var sets []string
	for _, col := range cols {
		if col.value == nil {
			continue
		}
		sets = append(sets, col.name+" = ?")
		args = append(args, *col.value)
	}
	if len(sets) == 0 {
		return "", nil, false
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now, id)

	return "UPDATE documents SET " + strings.Join(sets, ", ") + " WHERE id = ?", args, true
}
