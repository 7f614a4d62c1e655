package components

import (
	"parking-reserve/internal/infra/cache"
	"parking-reserve/internal/infra/readstore"
	"parking-reserve/internal/infra/repository"
	sqlc "parking-reserve/internal/infra/sqlc/generated"
	"parking-reserve/internal/infra/uow"
	"parking-reserve/internal/pkg/config"
	"parking-reserve/internal/usecase/commands"
	"parking-reserve/internal/usecase/queries"
	"parking-reserve/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
	cacheModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Slot
		fx.Annotate(
			readstore.NewSlotReadStore,
			fx.As(new(queries.SlotViewRepo)),
		),
		// Booking
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
			fx.As(new(queries.OverlapCounter)),
		),
		// User
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Slot
		fx.Annotate(
			func(q *sqlc.Queries) *repository.SlotRepository { return repository.NewSlotRepository(q) },
			fx.As(new(shared.SlotRepository)),
		),
		// Booking
		fx.Annotate(
			func(q *sqlc.Queries) *repository.BookingRepository { return repository.NewBookingRepository(q) },
			fx.As(new(shared.BookingRepository)),
		),
		// User
		fx.Annotate(
			func(q *sqlc.Queries) *repository.UserRepository { return repository.NewUserRepository(q) },
			fx.As(new(shared.UserRepository)),
		),
	),
)

var cacheModule = fx.Module("persistence/cache",
	fx.Provide(
		fx.Annotate(
			NewSlotListingCache,
			fx.As(new(queries.SlotListingCache)),
			fx.As(new(commands.ListingInvalidator)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

func NewSlotListingCache(client *redis.Client, cfg config.Config) *cache.SlotListingCache {
	return cache.NewSlotListingCache(client, cfg.Cache.SlotListingTTL)
}
