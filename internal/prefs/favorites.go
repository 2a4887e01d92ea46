package prefs

// Favorites returns the starred tool ids in the order they were added.
func (s *Store) Favorites() []string {
	out := make([]string, len(s.state.Favorites))
	copy(out, s.state.Favorites)
	return out
}

// IsFavorite reports whether id is starred.
func (s *Store) IsFavorite(id string) bool {
	return s.indexOfFavorite(id) >= 0
}

// AddFavorite stars id. It returns false if it already was.
func (s *Store) AddFavorite(id string) bool {
	if s.IsFavorite(id) {
		return false
	}
	s.state.Favorites = append(s.state.Favorites, id)
	s.dirty = true
	return true
}

// RemoveFavorite unstars id. It returns false if it was not starred.
func (s *Store) RemoveFavorite(id string) bool {
	i := s.indexOfFavorite(id)
	if i < 0 {
		return false
	}
	s.state.Favorites = append(s.state.Favorites[:i], s.state.Favorites[i+1:]...)
	s.dirty = true
	return true
}

// ToggleFavorite flips id and returns whether it is now starred.
func (s *Store) ToggleFavorite(id string) bool {
	if s.RemoveFavorite(id) {
		return false
	}
	s.AddFavorite(id)
	return true
}

// ClearFavorites removes every favorite and returns how many there were.
func (s *Store) ClearFavorites() int {
	n := len(s.state.Favorites)
	if n > 0 {
		s.state.Favorites = nil
		s.dirty = true
	}
	return n
}

func (s *Store) indexOfFavorite(id string) int {
	for i, fav := range s.state.Favorites {
		if fav == id {
			return i
		}
	}
	return -1
}
