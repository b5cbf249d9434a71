package storage

import "fmt"

// Open picks a backend by driver name. location is the database path for
// sqlite and the data directory for file.
func Open(driver, location string) (KV, error) {
	switch driver {
	case DriverSQLite, "":
		kv, err := OpenSQLite(location)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case DriverFile:
		kv, err := OpenFile(location)
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", driver)
	}
}
