package mysql

import (
	"context"
	"database/sql"
	"strings"

	"estate_inquiry/internal/domain"
)

func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertAgent(ctx context.Context, a domain.Agent) error {
	_, err := r.db.ExecContext(ctx, upsertAgentSQL, a.ID, a.Name, a.Email)
	return err
}

func (r *Repo) UpsertResidence(ctx context.Context, res domain.Residence) error {
	_, err := r.db.ExecContext(ctx, upsertResidenceSQL,
		res.ID,
		res.Title,
		res.Price,
		res.Location,
		res.City,
		res.Bedrooms,
		res.Bathrooms,
		res.SurfaceArea,
		res.Description,
		res.Image,
		res.Type,
		valInt64(res.AgentID),
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

// residenceDest returns scan targets in residenceColumns order.
func residenceDest(res *domain.Residence, agentID *sql.NullInt64) []any {
	return []any{
		&res.ID, &res.Title, &res.Price, &res.Location, &res.City,
		&res.Bedrooms, &res.Bathrooms, &res.SurfaceArea,
		&res.Description, &res.Image, &res.Type, agentID,
	}
}

func scanResidence(s rowScanner) (domain.Residence, error) {
	var res domain.Residence
	var agentID sql.NullInt64
	if err := s.Scan(residenceDest(&res, &agentID)...); err != nil {
		return domain.Residence{}, err
	}
	if agentID.Valid {
		id := agentID.Int64
		res.AgentID = &id
	}
	return res, nil
}

func (r *Repo) GetResidence(ctx context.Context, id int64) (domain.Residence, error) {
	res, err := scanResidence(r.db.QueryRowContext(ctx, getResidenceSQL, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Residence{}, domain.ErrNotFound
		}
		return domain.Residence{}, err
	}
	return res, nil
}

func (r *Repo) FindResidenceWithAgent(ctx context.Context, id int64) (*domain.Residence, error) {
	row := r.db.QueryRowContext(ctx, findResidenceWithAgentSQL, id)

	var res domain.Residence
	var agentID sql.NullInt64
	var aID sql.NullInt64
	var aName, aEmail sql.NullString

	dest := append(residenceDest(&res, &agentID), &aID, &aName, &aEmail)
	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // absence is not an error at this layer
		}
		return nil, err
	}

	if agentID.Valid {
		id := agentID.Int64
		res.AgentID = &id
	}
	if aID.Valid {
		res.Agent = &domain.Agent{ID: aID.Int64, Name: aName.String, Email: aEmail.String}
	}
	return &res, nil
}

func (r *Repo) ListResidences(ctx context.Context, f domain.ResidenceFilter) ([]domain.Residence, error) {
	q, args := buildListQuery(f)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Residence
	for rows.Next() {
		res, err := scanResidence(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// buildListQuery appends one placeholder clause per set filter field.
// City and type compare case-insensitively; ordering is catalog order.
func buildListQuery(f domain.ResidenceFilter) (string, []any) {
	var where []string
	var args []any
	if f.City != "" {
		where = append(where, "LOWER(r.city) = LOWER(?)")
		args = append(args, f.City)
	}
	if f.Type != "" {
		where = append(where, "LOWER(r.type) = LOWER(?)")
		args = append(args, f.Type)
	}
	if f.MinPrice != nil {
		where = append(where, "r.price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where = append(where, "r.price <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.MinBedrooms != nil {
		where = append(where, "r.bedrooms >= ?")
		args = append(args, *f.MinBedrooms)
	}

	q := listResidencesSQL
	if len(where) > 0 {
		q += "\nWHERE " + strings.Join(where, " AND ")
	}
	return q + "\nORDER BY r.id", args
}
