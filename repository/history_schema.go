package repository

const sqliteHistorySchema = `
CREATE TABLE IF NOT EXISTS observations (
    period                 TEXT PRIMARY KEY,
    revenue                REAL NOT NULL,
    costs                  REAL NOT NULL,
    labor_hours            REAL NOT NULL,
    equipment_utilization  REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS operational_aggregates (
    id                     INTEGER PRIMARY KEY CHECK (id = 1),
    active_project_count   INTEGER NOT NULL,
    average_project_value  REAL NOT NULL,
    equipment_average_age  REAL NOT NULL,
    technician_count       INTEGER NOT NULL,
    updated_at             TEXT NOT NULL
);
`

const postgresHistorySchema = `
CREATE TABLE IF NOT EXISTS observations (
    period                 TIMESTAMPTZ PRIMARY KEY,
    revenue                DOUBLE PRECISION NOT NULL,
    costs                  DOUBLE PRECISION NOT NULL,
    labor_hours            DOUBLE PRECISION NOT NULL,
    equipment_utilization  DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS operational_aggregates (
    id                     INTEGER PRIMARY KEY CHECK (id = 1),
    active_project_count   INTEGER NOT NULL,
    average_project_value  DOUBLE PRECISION NOT NULL,
    equipment_average_age  DOUBLE PRECISION NOT NULL,
    technician_count       INTEGER NOT NULL,
    updated_at             TIMESTAMPTZ NOT NULL
);
`
