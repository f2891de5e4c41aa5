package postgres

// PostgreSQL error codes treated as transient
const (
	PgErrorCodeLockNotAvailable     = "55P03"
	PgErrorCodeQueryCanceled        = "57014"
	PgErrorCodeSerializationFailure = "40001"
	PgErrorCodeDeadlockDetected     = "40P01"
	PgErrorCodeAdminShutdown        = "57P01"
	PgErrorClassConnection          = "08"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToSetTimeouts       = "failed to set transaction timeouts"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - User Operations
const (
	ErrMsgFailedToUpsertUser     = "failed to upsert user"
	ErrMsgFailedToGetUser        = "failed to get user"
	ErrMsgFailedToLockUser       = "failed to lock user"
	ErrMsgFailedToUpdateUser     = "failed to update user"
	ErrMsgFailedToReadLeaders    = "failed to read leaderboard"
	ErrMsgFailedToCountRicher    = "failed to count richer users"
	ErrMsgFailedToGetPerks       = "failed to get perks"
	ErrMsgFailedToAddPerk        = "failed to add perk"
	ErrMsgFailedToCollectionSize = "failed to sum collection value"
)

// Error Messages - Item Operations
const (
	ErrMsgFailedToListItems   = "failed to list items"
	ErrMsgFailedToLockItem    = "failed to lock item"
	ErrMsgFailedToInsertItem  = "failed to insert item"
	ErrMsgFailedToDeleteItem  = "failed to delete item"
	ErrMsgFailedToDeleteItems = "failed to delete items"
)

// SQL
const (
	sqlSetTxTimeouts = `SELECT set_config('lock_timeout', $1, true), set_config('statement_timeout', $1, true)`

	userColumns = `user_id, username, first_name, balance, draw_count, total_items, farm_income,
		last_draw_at, last_daily_at, last_farm_at, created_at`

	itemColumns = `item_id, user_id, name, rarity, price, obtained_at`

	sqlGetUser = `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	sqlGetUserForUpdate = sqlGetUser + ` FOR UPDATE`

	sqlGetUserByUsernameKey = `SELECT ` + userColumns + ` FROM users
		WHERE username_key = $1 ORDER BY user_id LIMIT 1`

	sqlUpsertUser = `
		INSERT INTO users (user_id, username, username_key, first_name, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username,
		    username_key = EXCLUDED.username_key,
		    first_name = EXCLUDED.first_name
		RETURNING ` + userColumns + `, (xmax = 0) AS created`

	sqlUpdateUser = `
		UPDATE users
		SET balance = $2, draw_count = $3, total_items = $4, farm_income = $5,
		    last_draw_at = $6, last_daily_at = $7, last_farm_at = $8
		WHERE user_id = $1`

	sqlLeaderboard = `
		SELECT user_id, username, first_name, balance, total_items
		FROM users
		ORDER BY balance DESC, user_id ASC
		LIMIT $1`

	sqlCountRicher = `SELECT COUNT(*) FROM users WHERE balance > $1`

	sqlGetPerks = `SELECT perk FROM user_perks WHERE user_id = $1`

	sqlAddPerk = `
		INSERT INTO user_perks (user_id, perk, purchased_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, perk) DO UPDATE SET purchased_at = EXCLUDED.purchased_at`

	sqlListItems = `SELECT ` + itemColumns + ` FROM user_items
		WHERE user_id = $1
		ORDER BY rarity DESC, price DESC, item_id ASC`

	sqlListItemsByRarity = `SELECT ` + itemColumns + ` FROM user_items
		WHERE user_id = $1 AND rarity = $2
		ORDER BY price DESC, item_id ASC`

	sqlCollectionValue = `SELECT COALESCE(SUM(price), 0)::bigint FROM user_items WHERE user_id = $1`

	sqlGetItemForUpdate = `SELECT ` + itemColumns + ` FROM user_items WHERE item_id = $1 FOR UPDATE`

	sqlInsertItem = `
		INSERT INTO user_items (user_id, name, rarity, price, obtained_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + itemColumns

	sqlDeleteItem = `DELETE FROM user_items WHERE item_id = $1`

	sqlDeleteItemsByRarity = `
		DELETE FROM user_items
		WHERE user_id = $1 AND rarity = $2
		RETURNING ` + itemColumns
)
