// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DataFile: Workbook (.xlsx) or CSV directory loaded at startup
  - DatabaseURL: Source database loaded at startup
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKeySalt: Secret for admin key HMAC (optional; loads are open without it)
  - MaxUploadMB: Upload size limit for workbook loads (default: 10)

# Sources of Configuration

In increasing precedence:

 1. A dotenv file (-env-file, default .env; a missing file is ignored)
 2. Environment variables, parsed with caarlos0/env
 3. CLI flags

	PORT           → -p
	DATA_FILE      → -f
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ADMIN_KEY_SALT → -admin-salt
	MAX_UPLOAD_MB  → -max-upload-mb

# Validation

ParseFlags returns an error if:

  - the port is outside 1-65535
  - the database type is not sqlite or postgres
  - both a data file and a database URL are given
  - -print-admin-key is set without an admin salt
*/
package cliparse
