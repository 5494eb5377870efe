package data

import (
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/fire-go/service/config"
)

// New builds the data service selected by the configuration
func New(cfgsvc config.IService) (IService, error) {
	switch cfgsvc.GetDataStore() {
	case config.DataStoreSqlite:
		return NewSqlite(cfgsvc)
	case config.DataStoreFiles, "":
		return NewFilesDB(cfgsvc)
	}
	return nil, xerrors.Errorf("unsupported data store: %s", cfgsvc.GetDataStore())
}
