// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package cache

import (
	"sort"
	"strings"
	"sync"
)

type trieNode struct {
	children map[rune]*trieNode
	// titles holds every original spelling that normalizes to this node's key
	titles []string
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// TitleTrie is a case-insensitive prefix tree over book titles.
// Insert and lookup are O(m) in the length of the key.
type TitleTrie struct {
	mu   sync.RWMutex
	root *trieNode
	size int
}

// NewTitleTrie creates an empty trie.
func NewTitleTrie() *TitleTrie {
	return &TitleTrie{root: newTrieNode()}
}

// NewTitleTrieFrom builds a trie holding every title in titles.
func NewTitleTrieFrom(titles []string) *TitleTrie {
	t := NewTitleTrie()
	for _, title := range titles {
		t.Insert(title)
	}
	return t
}

func normalizeKey(s string) string {
	return strings.ToLower(s)
}

// Insert adds a title. It returns false when the title is empty or already present.
func (t *TitleTrie) Insert(title string) bool {
	if title == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, ch := range normalizeKey(title) {
		child := node.children[ch]
		if child == nil {
			child = newTrieNode()
			node.children[ch] = child
		}
		node = child
	}

	for _, existing := range node.titles {
		if existing == title {
			return false
		}
	}
	node.titles = append(node.titles, title)
	t.size++
	return true
}

// Contains reports whether the exact title (case-sensitive) was inserted.
func (t *TitleTrie) Contains(title string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.find(normalizeKey(title))
	if node == nil {
		return false
	}
	for _, existing := range node.titles {
		if existing == title {
			return true
		}
	}
	return false
}

// Autocomplete returns up to limit titles whose lowercase form starts with the
// lowercase prefix, sorted by byte order. A limit <= 0 returns every match.
func (t *TitleTrie) Autocomplete(prefix string, limit int) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.find(normalizeKey(prefix))
	if node == nil {
		return nil
	}

	var results []string
	collect(node, &results)
	sort.Strings(results)

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Size returns the number of distinct titles in the trie.
func (t *TitleTrie) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// find walks to the node for key. Caller holds the lock.
func (t *TitleTrie) find(key string) *trieNode {
	node := t.root
	for _, ch := range key {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}
	return node
}

func collect(node *trieNode, results *[]string) {
	*results = append(*results, node.titles...)
	for _, child := range node.children {
		collect(child, results)
	}
}
