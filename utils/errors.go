package utils

import "errors"

var (
	ErrEmptyKey     = errors.New("invalid key: key can not be empty")
	ErrDuplicateKey = errors.New("invalid key: already in tree")
	ErrKeyNotFound  = errors.New("invalid key: not found or deleted")

	ErrEmptyValue = errors.New("invalid value: value can not be empty")

	ErrEmptyTree          = errors.New("tree: no node in the requested tree or subtree")
	ErrNoSuccessor        = errors.New("tree: node holds the maximum key, no successor")
	ErrNoPredecessor      = errors.New("tree: node holds the minimum key, no predecessor")
	ErrInvalidNode        = errors.New("tree: node handle is stale or belongs to another tree")
	ErrInvariantViolation = errors.New("tree: red-black invariant violated")

	ErrEncodingHeaderFailed = errors.New("encoding fail: failed to encode header")
	ErrDecodingHeaderFailed = errors.New("decoding fail: failed to decode header")

	ErrEncodingKVFailed = errors.New("encoding fail: failed to encode kv")
	ErrDecodingKVFailed = errors.New("decoding fail: failed to decode kv")
	ErrChecksumMismatch = errors.New("decoding fail: record checksum mismatch")

	ErrInvalidRange  = errors.New("invalid range: lower bound greater than upper bound")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
