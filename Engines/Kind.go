package Engines

import (
	"strings"

	"github.com/pkg/errors"

	dstrace "github.com/g-m-twostay/go-dstrace"
)

// Kind of structure an engine drives.
type Kind uint8

const (
	KindLinkedList Kind = iota
	KindStack
	KindQueue
	KindSeqList
	KindBST
	KindAVL
	KindRB
	KindBPlus
	KindTrie
	KindHuffman
	KindHashTable
)

var kindNames = [...]string{"linked_list", "stack", "queue", "seq_list", "bst", "avl", "rbtree", "bplus", "trie", "huffman", "hash_table"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, len(kindNames))
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

// ParseKind accepts the names printed by Kind.String, case-insensitively, with '-' standing for '_'.
func ParseKind(s string) (Kind, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, name := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, errors.Wrapf(dstrace.ErrInvalidArgument, "unknown structure kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) (err error) {
	*k, err = ParseKind(string(b))
	return
}
