package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/allisson/cards/internal/cards/domain"
	"github.com/allisson/cards/internal/cards/usecase"
	"github.com/allisson/cards/internal/database"

	apperrors "github.com/allisson/cards/internal/errors"
)

// MySQLCardRepository handles card persistence for MySQL
type MySQLCardRepository struct {
	db *sql.DB
}

// NewMySQLCardRepository creates a new MySQLCardRepository
func NewMySQLCardRepository(db *sql.DB) *MySQLCardRepository {
	return &MySQLCardRepository{
		db: db,
	}
}

// Create inserts a new card together with its sensitive data and
// assigns the generated card id.
func (r *MySQLCardRepository) Create(ctx context.Context, card *domain.Card) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO cards (user_id, account_id, type, network, status, plan_id, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(ctx, query,
		card.UserID, card.AccountID, card.Type.String(), card.Network.String(),
		card.Status.String(), card.PlanID, card.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCard
		}
		return apperrors.Wrap(err, "failed to create card")
	}

	cardID, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read card id")
	}
	card.ID = cardID

	if card.Sensitive == nil {
		return domain.ErrSensitiveDataMissing
	}

	query = `INSERT INTO card_sensitive_data (card_id, card_number, cvv, pin, expiry)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query,
		card.ID, card.Sensitive.CardNumber, card.Sensitive.CVV,
		card.Sensitive.PIN, card.Sensitive.Expiry,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create card sensitive data")
	}
	return nil
}

// Update rewrites a card's status and, when present, its sensitive data.
func (r *MySQLCardRepository) Update(ctx context.Context, card *domain.Card) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE cards SET status = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, card.Status.String(), card.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update card")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check updated rows")
	}
	if rows == 0 {
		return domain.ErrCardNotFound
	}

	if card.Sensitive != nil {
		query = `UPDATE card_sensitive_data SET pin = ? WHERE card_id = ?`

		if _, err := querier.ExecContext(ctx, query, card.Sensitive.PIN, card.ID); err != nil {
			return apperrors.Wrap(err, "failed to update card sensitive data")
		}
	}
	return nil
}

// GetByID retrieves a card with its sensitive data by id.
func (r *MySQLCardRepository) GetByID(ctx context.Context, cardID int64) (*domain.Card, error) {
	querier := database.GetTx(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s
			  FROM cards c
			  LEFT JOIN card_sensitive_data s ON s.card_id = c.id
			  WHERE c.id = ?`, cardColumns)

	card, err := scanCard(querier.QueryRowContext(ctx, query, cardID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get card by id")
	}
	return card, nil
}

// GetByCardNumber retrieves a card by its full card number.
func (r *MySQLCardRepository) GetByCardNumber(ctx context.Context, cardNumber string) (*domain.Card, error) {
	querier := database.GetTx(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s
			  FROM cards c
			  JOIN card_sensitive_data s ON s.card_id = c.id
			  WHERE s.card_number = ?`, cardColumns)

	card, err := scanCard(querier.QueryRowContext(ctx, query, cardNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get card by number")
	}
	return card, nil
}

// GetByCardNumberAndAccountID retrieves a card by number scoped to an account.
func (r *MySQLCardRepository) GetByCardNumberAndAccountID(
	ctx context.Context,
	cardNumber string,
	accountID int64,
) (*domain.Card, error) {
	querier := database.GetTx(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s
			  FROM cards c
			  JOIN card_sensitive_data s ON s.card_id = c.id
			  WHERE s.card_number = ? AND c.account_id = ?`, cardColumns)

	card, err := scanCard(querier.QueryRowContext(ctx, query, cardNumber, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get card by number and account")
	}
	return card, nil
}

// List retrieves cards matching the filters, ordered by id with pagination.
func (r *MySQLCardRepository) List(
	ctx context.Context,
	filters usecase.ListFilters,
	offset, limit int,
) ([]*domain.Card, error) {
	querier := database.GetTx(ctx, r.db)

	var conditions []string
	var args []any

	addCondition := func(column string, value any) {
		args = append(args, value)
		conditions = append(conditions, column+" = ?")
	}

	if filters.Status != "" {
		addCondition("c.status", filters.Status)
	}
	if filters.Type != "" {
		addCondition("c.type", filters.Type)
	}
	if filters.Network != "" {
		addCondition("c.network", filters.Network)
	}
	if filters.UserID != nil {
		addCondition("c.user_id", *filters.UserID)
	}
	if filters.AccountID != nil {
		addCondition("c.account_id", *filters.AccountID)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s
			  FROM cards c
			  LEFT JOIN card_sensitive_data s ON s.card_id = c.id
			  %s
			  ORDER BY c.id
			  LIMIT ? OFFSET ?`, cardColumns, where)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list cards")
	}
	defer func() { _ = rows.Close() }()

	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan card")
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate cards")
	}
	return cards, nil
}

// ExistsDuplicate reports whether a card with the same ownership and
// classification tuple already exists.
func (r *MySQLCardRepository) ExistsDuplicate(
	ctx context.Context,
	userID, accountID int64,
	cardType domain.CardType,
	network domain.CardNetwork,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS (
			  SELECT 1 FROM cards
			  WHERE user_id = ? AND account_id = ? AND type = ? AND network = ?)`

	var exists bool
	err := querier.QueryRowContext(ctx, query, userID, accountID, cardType.String(), network.String()).
		Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check duplicate card")
	}
	return exists, nil
}

// ExistsByPlanAndUser reports whether the user already holds a card on the plan.
func (r *MySQLCardRepository) ExistsByPlanAndUser(ctx context.Context, planID, userID int64) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM cards WHERE plan_id = ? AND user_id = ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, planID, userID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check plan assignment")
	}
	return exists, nil
}

// CountDistinctUsersByPlan counts how many distinct users hold cards on the plan.
func (r *MySQLCardRepository) CountDistinctUsersByPlan(ctx context.Context, planID int64) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(DISTINCT user_id) FROM cards WHERE plan_id = ?`

	var count int64
	if err := querier.QueryRowContext(ctx, query, planID).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count plan users")
	}
	return count, nil
}
