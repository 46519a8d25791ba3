package block

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultNamespace пространство имен встроенных ресурсов
const DefaultNamespace = "freeworld"

var (
	namespaceRule = regexp.MustCompile(`^[\w-]+$`)
	pathRule      = regexp.MustCompile(`^[\w/.-]*$`)

	// ErrInvalidIdentifier некорректный идентификатор
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

// Identifier идентификатор вида namespace:path
type Identifier struct {
	Namespace string
	Path      string
}

// NewIdentifier создает идентификатор с проверкой обеих частей
func NewIdentifier(namespace, path string) (Identifier, error) {
	if !namespaceRule.MatchString(namespace) {
		return Identifier{}, fmt.Errorf("%w: namespace %q", ErrInvalidIdentifier, namespace)
	}
	if !pathRule.MatchString(path) {
		return Identifier{}, fmt.Errorf("%w: path %q", ErrInvalidIdentifier, path)
	}
	return Identifier{Namespace: namespace, Path: path}, nil
}

// ParseIdentifier разбирает строку "ns:path" или "path" (встроенное пространство имен)
func ParseIdentifier(s string) (Identifier, error) {
	ns, path, found := strings.Cut(s, ":")
	if !found {
		return NewIdentifier(DefaultNamespace, s)
	}
	return NewIdentifier(ns, path)
}

// Builtin создает идентификатор во встроенном пространстве имен.
// Паникует на некорректном пути, используется только для констант.
func Builtin(path string) Identifier {
	id, err := NewIdentifier(DefaultNamespace, path)
	if err != nil {
		panic(err)
	}
	return id
}

// WithPrefix возвращает идентификатор с путем prefix/path
func (id Identifier) WithPrefix(prefix string) Identifier {
	return Identifier{Namespace: id.Namespace, Path: prefix + "/" + id.Path}
}

func (id Identifier) String() string {
	return id.Namespace + ":" + id.Path
}
