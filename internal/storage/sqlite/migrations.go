package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema. These run
// on startup to ensure tables exist.
//
// Plan dates are stored as TEXT in ISO form (YYYY-MM-DD). Quantities are
// stored in their text form ("2 1/2 cups") and re-parsed on read; the format
// round-trips exactly. Override tables carry a foreign key to plans so that
// deleting a plan cascades away every override scoped to it.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS recipes (
    user_id TEXT NOT NULL,
    recipe_id TEXT NOT NULL,
    title TEXT NOT NULL,
    recipe_text TEXT NOT NULL,
    PRIMARY KEY (user_id, recipe_id)
);

CREATE TABLE IF NOT EXISTS plans (
    user_id TEXT NOT NULL,
    plan_date TEXT NOT NULL,
    PRIMARY KEY (user_id, plan_date)
);

CREATE TABLE IF NOT EXISTS plan_recipes (
    user_id TEXT NOT NULL,
    plan_date TEXT NOT NULL,
    recipe_id TEXT NOT NULL,
    count INTEGER NOT NULL,
    PRIMARY KEY (user_id, plan_date, recipe_id),
    FOREIGN KEY (user_id, plan_date) REFERENCES plans(user_id, plan_date) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS filtered_ingredients (
    user_id TEXT NOT NULL,
    plan_date TEXT NOT NULL,
    name TEXT NOT NULL,
    form TEXT NOT NULL,
    measure_type TEXT NOT NULL,
    PRIMARY KEY (user_id, plan_date, name, form, measure_type),
    FOREIGN KEY (user_id, plan_date) REFERENCES plans(user_id, plan_date) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS modified_amts (
    user_id TEXT NOT NULL,
    plan_date TEXT NOT NULL,
    name TEXT NOT NULL,
    form TEXT NOT NULL,
    measure_type TEXT NOT NULL,
    amt TEXT NOT NULL,
    PRIMARY KEY (user_id, plan_date, name, form, measure_type),
    FOREIGN KEY (user_id, plan_date) REFERENCES plans(user_id, plan_date) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS extra_items (
    user_id TEXT NOT NULL,
    plan_date TEXT NOT NULL,
    name TEXT NOT NULL,
    amt TEXT NOT NULL,
    PRIMARY KEY (user_id, plan_date, name),
    FOREIGN KEY (user_id, plan_date) REFERENCES plans(user_id, plan_date) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS staples (
    user_id TEXT PRIMARY KEY,
    staples_text TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS category_mappings (
    user_id TEXT NOT NULL,
    ingredient_name TEXT NOT NULL,
    category_name TEXT NOT NULL,
    PRIMARY KEY (user_id, ingredient_name)
);

CREATE INDEX IF NOT EXISTS idx_recipes_user_id ON recipes(user_id);
CREATE INDEX IF NOT EXISTS idx_plan_recipes_user_date ON plan_recipes(user_id, plan_date);
CREATE INDEX IF NOT EXISTS idx_category_mappings_user_id ON category_mappings(user_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
