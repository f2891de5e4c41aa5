package sqlite

// DriverName is the database/sql driver registered by modernc.org/sqlite
const DriverName = "sqlite"

// DSN pragmas: WAL journal, enforced foreign keys, a busy wait and
// immediate write locks so a transaction never upgrades mid-flight.
const dsnFormat = "file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_txlock=immediate"

// Error Messages
const (
	ErrMsgFailedToOpen              = "failed to open sqlite database"
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToUpsertUser        = "failed to upsert user"
	ErrMsgFailedToGetUser           = "failed to get user"
	ErrMsgFailedToUpdateUser        = "failed to update user"
	ErrMsgFailedToReadLeaders       = "failed to read leaderboard"
	ErrMsgFailedToCountRicher       = "failed to count richer users"
	ErrMsgFailedToGetPerks          = "failed to get perks"
	ErrMsgFailedToAddPerk           = "failed to add perk"
	ErrMsgFailedToListItems         = "failed to list items"
	ErrMsgFailedToSumItems          = "failed to sum collection value"
	ErrMsgFailedToGetItem           = "failed to get item"
	ErrMsgFailedToInsertItem        = "failed to insert item"
	ErrMsgFailedToDeleteItem        = "failed to delete item"
)

// SQL
const (
	userColumns = `user_id, username, first_name, balance, draw_count, total_items, farm_income,
		last_draw_at, last_daily_at, last_farm_at, created_at`

	itemColumns = `item_id, user_id, name, rarity, price, obtained_at`

	sqlGetUser = `SELECT ` + userColumns + ` FROM users WHERE user_id = ?`

	sqlGetUserByUsernameKey = `SELECT ` + userColumns + ` FROM users
		WHERE username_key = ? ORDER BY user_id LIMIT 1`

	sqlUserExists = `SELECT COUNT(*) FROM users WHERE user_id = ?`

	sqlUpsertUser = `
		INSERT INTO users (user_id, username, username_key, first_name, balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE
		SET username = excluded.username,
		    username_key = excluded.username_key,
		    first_name = excluded.first_name`

	sqlUpdateUser = `
		UPDATE users
		SET balance = ?, draw_count = ?, total_items = ?, farm_income = ?,
		    last_draw_at = ?, last_daily_at = ?, last_farm_at = ?
		WHERE user_id = ?`

	sqlLeaderboard = `
		SELECT user_id, username, first_name, balance, total_items
		FROM users
		ORDER BY balance DESC, user_id ASC
		LIMIT ?`

	sqlCountRicher = `SELECT COUNT(*) FROM users WHERE balance > ?`

	sqlGetPerks = `SELECT perk FROM user_perks WHERE user_id = ?`

	sqlAddPerk = `
		INSERT INTO user_perks (user_id, perk, purchased_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, perk) DO UPDATE SET purchased_at = excluded.purchased_at`

	sqlListItems = `SELECT ` + itemColumns + ` FROM user_items
		WHERE user_id = ?
		ORDER BY rarity DESC, price DESC, item_id ASC`

	sqlListItemsByRarity = `SELECT ` + itemColumns + ` FROM user_items
		WHERE user_id = ? AND rarity = ?
		ORDER BY price DESC, item_id ASC`

	sqlCollectionValue = `SELECT COALESCE(SUM(price), 0) FROM user_items WHERE user_id = ?`

	sqlGetItem = `SELECT ` + itemColumns + ` FROM user_items WHERE item_id = ?`

	sqlInsertItem = `
		INSERT INTO user_items (user_id, name, rarity, price, obtained_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING ` + itemColumns

	sqlDeleteItem = `DELETE FROM user_items WHERE item_id = ?`

	sqlDeleteItemsByRarity = `
		DELETE FROM user_items
		WHERE user_id = ? AND rarity = ?
		RETURNING ` + itemColumns
)
