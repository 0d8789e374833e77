package repository

import (
	"context"
	"fmt"
	"strings"

	"vidtube/internal/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func qualify(table, column string) string {
	if strings.Contains(column, ".") {
		return column
	}
	return table + "." + column
}

func joinSQL(table string, j *query.Join) string {
	sql := fmt.Sprintf("JOIN %s AS %s ON %s.id = %s",
		j.Table, j.Alias, j.Alias, qualify(table, j.LocalKey))
	if j.Live {
		sql += fmt.Sprintf(" AND %s.deleted_at IS NULL", j.Alias)
	}
	return sql
}

// ownerJoin is the live owner inner join used by listings outside a plan.
func ownerJoin(table string) string {
	return joinSQL(table, query.OwnerJoin("owner_id", "Owner"))
}

// filterScope compiles the filter and join stages. It drives both the count
// and the page query so totals agree with the rows returned.
func filterScope(plan *query.Plan) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if plan.Join != nil {
			db = db.Joins(joinSQL(plan.Table, plan.Join))
		}
		for _, pred := range plan.Filters {
			switch p := pred.(type) {
			case query.Eq:
				db = db.Where(clause.Eq{
					Column: clause.Column{Table: plan.Table, Name: p.Column},
					Value:  p.Value,
				})
			case query.Contains:
				term := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(p.Term))) + "%"
				ors := make([]string, 0, len(p.Columns))
				args := make([]any, 0, len(p.Columns))
				for _, col := range p.Columns {
					ors = append(ors, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, qualify(plan.Table, col)))
					args = append(args, term)
				}
				if len(ors) > 0 {
					db = db.Where("("+strings.Join(ors, " OR ")+")", args...)
				}
			}
		}
		return db
	}
}

// pageScope compiles the sort and paginate stages. Ties break on id in the
// same direction.
func pageScope(plan *query.Plan) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Order(clause.OrderByColumn{Column: clause.Column{Table: plan.Table, Name: plan.Sort.Column}, Desc: plan.Sort.Desc}).
			Order(clause.OrderByColumn{Column: clause.Column{Table: plan.Table, Name: "id"}, Desc: plan.Sort.Desc}).
			Offset(plan.Page.Offset()).
			Limit(plan.Page.Size)
	}
}

// list executes plan against the table of T.
func list[T any](ctx context.Context, db *gorm.DB, plan *query.Plan) ([]*T, int64, error) {
	var total int64
	if err := db.WithContext(ctx).Model(new(T)).Scopes(filterScope(plan)).Count(&total).Error; err != nil {
		return nil, 0, translate(err, plan.Table, nil)
	}

	items := make([]*T, 0, plan.Page.Size)
	if total == 0 {
		return items, 0, nil
	}

	q := db.WithContext(ctx).
		Model(new(T)).
		Select(plan.Table + ".*").
		Scopes(filterScope(plan), pageScope(plan))
	if plan.Join != nil && plan.Join.Preload != "" {
		q = q.Preload(plan.Join.Preload)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, translate(err, plan.Table, nil)
	}
	return items, total, nil
}
