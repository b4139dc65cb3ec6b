package sqlite

// Schema DDL. Dates are stored as ISO YYYY-MM-DD text so that lexicographic
// comparison in SQL matches chronological order. Position values need not be
// contiguous; only their relative order matters.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    status INTEGER NOT NULL DEFAULT 0,
    due_date TEXT,
    category_id INTEGER REFERENCES categories(id),
    position INTEGER NOT NULL
);
`
