/*
Package cliparse builds the server Config from flags, the environment, and
an optional .env file.

Flags win over environment variables. LoadEnvFile never overrides a
variable that is already set.

	ADMIN_KEY_SALT (--admin-salt)         required
	SESSION_SECRET (--session-secret)     required
	PORT (-p)                             default 8000
	DATABASE_TYPE (-t)                    sqlite (default), postgres, memory
	DATABASE_URL (-d)                     required for postgres
	SESSION_BACKEND (--session-backend)   memory (default), sql, redis
	REDIS_URL (--redis-url)               required for redis
	SESSION_TTL (--session-ttl)           default 336h
	LOG_LEVEL, LOG_FORMAT                 info, auto
*/
package cliparse
