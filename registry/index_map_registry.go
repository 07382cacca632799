/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sync"
)

// Key templates tell a table backend how to derive its key attributes from
// an item, e.g. {"PK": "HANDLE#{Handle}", "SK": "HANDLE#{Handle}"}.
var (
	indexMaps   = make(map[reflect.Type]map[string]string)
	indexMapsMu sync.RWMutex
)

// RegisterIndexMap associates item type T with its key templates.
func RegisterIndexMap[T any](idxMap map[string]string) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	copied := make(map[string]string, len(idxMap))
	for k, v := range idxMap {
		copied[k] = v
	}

	indexMapsMu.Lock()
	defer indexMapsMu.Unlock()
	indexMaps[t] = copied
}

// GetIndexMap returns the key templates registered for T.
func GetIndexMap[T any]() (map[string]string, bool) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	indexMapsMu.RLock()
	defer indexMapsMu.RUnlock()
	m, ok := indexMaps[t]
	return m, ok
}

// MustIndexMap is GetIndexMap for callers that registered T in init.
func MustIndexMap[T any]() map[string]string {
	m, ok := GetIndexMap[T]()
	if !ok {
		panic(fmt.Sprintf("index map registry: no index map registered for %v", reflect.TypeOf((*T)(nil)).Elem()))
	}
	return m
}
