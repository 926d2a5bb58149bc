package project

import (
	"crypto/sha256"
)

// Digest - фиксированный 256-битный хеш содержимого файла модуля.
type Digest [32]byte

// DigestBytes хеширует содержимое одного файла.
func DigestBytes(content []byte) Digest {
	return sha256.Sum256(content)
}

// Combine строит ключ кэша модуля: H( content || dep1 || dep2 ... ).
// Порядок deps обязан быть детерминированным (рёбра графа отсортированы).
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
