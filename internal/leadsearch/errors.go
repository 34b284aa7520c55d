package leadsearch

import "errors"

var (
	// ErrInvalidMinScore is returned when the minScore parameter is not an integer
	ErrInvalidMinScore = errors.New("minScore must be an integer")

	// ErrInvalidVocabulary is returned when a vocabulary table is empty or malformed
	ErrInvalidVocabulary = errors.New("invalid vocabulary")

	// ErrInvalidSettings is returned when generator ranges are inconsistent
	ErrInvalidSettings = errors.New("invalid generator settings")
)
