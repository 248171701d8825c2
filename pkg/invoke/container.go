package invoke

// Container is the lookup contract of a dependency injection container.
// Get fails with an error matching ErrNotFound when key is absent.
type Container interface {
	Get(key string) (any, error)
	Has(key string) bool
}

// lookup fetches key from container. found is false when the entry is absent;
// other container failures are returned as err.
func lookup(container Container, key string) (value any, found bool, err error) {
	if container == nil || !container.Has(key) {
		return nil, false, nil
	}
	value, err = container.Get(key)
	if err != nil {
		if IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}
