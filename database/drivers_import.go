package database

// Import all drivers to register them
import (
	_ "github.com/rediwo/redi-records/drivers/mysql"
	_ "github.com/rediwo/redi-records/drivers/postgresql"
	_ "github.com/rediwo/redi-records/drivers/sqlite"
)
