package pgsql

import (
	portsrepo "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:     newPgxUserRepository(dbPool),
		EntryRepo:    newPgxEntryRepository(dbPool),
		AssetRepo:    newPgxAssetRepository(dbPool),
		SnapshotRepo: newPgxSnapshotRepository(dbPool),
	}
}
