package sqlite

// Store bundles the SQLite-backed repositories over one connection pool. It
// is a plain constructed value; callers own its lifecycle and may open as
// many independent stores as they need.
type Store struct {
	pool    *ConnectionPool
	Persons *PersonRepository
	Rooms   *RoomRepository
	Usages  *UsageRepository
}

// Open creates the connection pool and wires the repositories. The schema is
// not touched; call Migrate before first use.
func Open(config PoolConfig) (*Store, error) {
	pool, err := NewConnectionPool(config)
	if err != nil {
		return nil, err
	}

	return &Store{
		pool:    pool,
		Persons: NewPersonRepository(pool),
		Rooms:   NewRoomRepository(pool),
		Usages:  NewUsageRepository(pool),
	}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.pool.Close()
}

// Pool exposes the underlying connection pool, mainly for tests.
func (s *Store) Pool() *ConnectionPool {
	return s.pool
}
