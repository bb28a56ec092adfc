package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
)

// goalRepository implements domain.GoalRepository
type goalRepository struct {
	db *DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *DB) domain.GoalRepository {
	return &goalRepository{db: db}
}

// GetByID retrieves a goal with its vault/investment links
func (r *goalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	query := `SELECT id, title, target_amount, current_amount, deadline FROM goals WHERE id = $1`

	goal, err := scanGoal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("goal not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	if err := r.loadLinks(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// List retrieves all goals with their links
func (r *goalRepository) List(ctx context.Context) ([]*domain.Goal, error) {
	query := `SELECT id, title, target_amount, current_amount, deadline FROM goals ORDER BY title ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goals: %w", err)
	}

	for _, goal := range goals {
		if err := r.loadLinks(ctx, goal); err != nil {
			return nil, err
		}
	}

	return goals, nil
}

// loadLinks fills the goal's linked vault and investment IDs from the join tables
func (r *goalRepository) loadLinks(ctx context.Context, goal *domain.Goal) error {
	vaultIDs, err := r.queryLinkIDs(ctx,
		`SELECT vault_id FROM goal_vaults WHERE goal_id = $1`, goal.ID)
	if err != nil {
		return fmt.Errorf("failed to load goal vault links: %w", err)
	}
	goal.LinkedVaultIDs = vaultIDs

	investmentIDs, err := r.queryLinkIDs(ctx,
		`SELECT investment_id FROM goal_investments WHERE goal_id = $1`, goal.ID)
	if err != nil {
		return fmt.Errorf("failed to load goal investment links: %w", err)
	}
	goal.LinkedInvestmentIDs = investmentIDs

	return nil
}

func (r *goalRepository) queryLinkIDs(ctx context.Context, query string, goalID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var goal domain.Goal
	var targetStr, currentStr string
	var deadline sql.NullTime

	err := row.Scan(&goal.ID, &goal.Title, &targetStr, &currentStr, &deadline)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan goal: %w", err)
	}

	target, err := decimal.NewFromString(targetStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse target_amount: %w", err)
	}
	goal.TargetAmount = target

	current, err := decimal.NewFromString(currentStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse current_amount: %w", err)
	}
	goal.CurrentAmount = current

	if deadline.Valid {
		d := deadline.Time.UTC()
		goal.Deadline = &d
	}

	return &goal, nil
}
