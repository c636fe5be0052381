package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agriscience/journal-api/internal/apperr"
	"github.com/agriscience/journal-api/internal/domain"
)

const memberColumns = "id, name, role, affiliation, location, email, profile_link, image_url, category, section_id, custom_fields, display_order"

func scanMember(row pgx.Row) (*domain.EditorialMember, error) {
	var m domain.EditorialMember
	var customFieldsJSON []byte
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Role,
		&m.Affiliation,
		&m.Location,
		&m.Email,
		&m.ProfileLink,
		&m.ImageURL,
		&m.Category,
		&m.SectionID,
		&customFieldsJSON,
		&m.DisplayOrder,
	)
	if err != nil {
		return nil, err
	}
	if len(customFieldsJSON) > 0 {
		if err := json.Unmarshal(customFieldsJSON, &m.CustomFields); err != nil {
			return nil, fmt.Errorf("failed to unmarshal custom fields: %w", err)
		}
	}
	return &m, nil
}

func (s *Store) ListSections(ctx context.Context) ([]domain.EditorialSection, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, display_order FROM editorial_sections
		ORDER BY display_order ASC
	`)
	if err != nil {
		return nil, apperr.NewBackend("list sections", err)
	}
	defer rows.Close()

	var sections []domain.EditorialSection
	for rows.Next() {
		var sec domain.EditorialSection
		if err := rows.Scan(&sec.ID, &sec.Title, &sec.DisplayOrder); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewBackend("list sections", err)
	}

	return sections, nil
}

func (s *Store) SaveSection(ctx context.Context, section domain.EditorialSection) (*domain.EditorialSection, error) {
	if section.ID == uuid.Nil {
		row := s.db.QueryRow(ctx, `
			INSERT INTO editorial_sections (title, display_order)
			VALUES ($1, $2)
			RETURNING id, title, display_order
		`, section.Title, section.DisplayOrder)
		var saved domain.EditorialSection
		if err := row.Scan(&saved.ID, &saved.Title, &saved.DisplayOrder); err != nil {
			return nil, apperr.NewBackend("insert section", err)
		}
		return &saved, nil
	}

	row := s.db.QueryRow(ctx, `
		UPDATE editorial_sections
		SET title = $2, display_order = $3
		WHERE id = $1
		RETURNING id, title, display_order
	`, section.ID, section.Title, section.DisplayOrder)
	var saved domain.EditorialSection
	if err := row.Scan(&saved.ID, &saved.Title, &saved.DisplayOrder); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NewNotFound("section", section.ID.String())
		}
		return nil, apperr.NewBackend("update section", err)
	}
	return &saved, nil
}

// DeleteSection fails with a ConflictError while members still
// reference the section.
func (s *Store) DeleteSection(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM editorial_sections WHERE id = $1`, id)
	if err != nil {
		return constraintErr("delete section", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("section", id.String())
	}
	return nil
}

func (s *Store) ListMembers(ctx context.Context) ([]domain.EditorialMember, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM editorial_board_members
		ORDER BY display_order ASC
	`, memberColumns)

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, apperr.NewBackend("list members", err)
	}
	defer rows.Close()

	var members []domain.EditorialMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewBackend("list members", err)
	}

	return members, nil
}

func (s *Store) GetMember(ctx context.Context, id uuid.UUID) (*domain.EditorialMember, error) {
	query := fmt.Sprintf(`SELECT %s FROM editorial_board_members WHERE id = $1`, memberColumns)

	m, err := scanMember(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NewNotFound("member", id.String())
		}
		return nil, apperr.NewBackend("get member", err)
	}
	return m, nil
}

func (s *Store) SaveMember(ctx context.Context, member domain.EditorialMember) (*domain.EditorialMember, error) {
	if member.Category == "" {
		member.Category = "General"
	}
	if member.CustomFields == nil {
		member.CustomFields = []domain.CustomField{}
	}
	customFieldsJSON, err := json.Marshal(member.CustomFields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal custom fields: %w", err)
	}

	if member.ID == uuid.Nil {
		query := fmt.Sprintf(`
			INSERT INTO editorial_board_members
				(name, role, affiliation, location, email, profile_link, image_url, category, section_id, custom_fields, display_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING %s
		`, memberColumns)
		saved, err := scanMember(s.db.QueryRow(ctx, query,
			member.Name, member.Role, member.Affiliation, member.Location, member.Email,
			member.ProfileLink, member.ImageURL, member.Category, member.SectionID,
			customFieldsJSON, member.DisplayOrder))
		if err != nil {
			return nil, constraintErr("insert member", err)
		}
		return saved, nil
	}

	query := fmt.Sprintf(`
		UPDATE editorial_board_members
		SET name = $2, role = $3, affiliation = $4, location = $5, email = $6,
			profile_link = $7, image_url = $8, category = $9, section_id = $10,
			custom_fields = $11, display_order = $12
		WHERE id = $1
		RETURNING %s
	`, memberColumns)
	saved, err := scanMember(s.db.QueryRow(ctx, query,
		member.ID, member.Name, member.Role, member.Affiliation, member.Location, member.Email,
		member.ProfileLink, member.ImageURL, member.Category, member.SectionID,
		customFieldsJSON, member.DisplayOrder))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NewNotFound("member", member.ID.String())
		}
		return nil, constraintErr("update member", err)
	}
	return saved, nil
}

func (s *Store) DeleteMember(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM editorial_board_members WHERE id = $1`, id)
	if err != nil {
		return apperr.NewBackend("delete member", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("member", id.String())
	}
	return nil
}
