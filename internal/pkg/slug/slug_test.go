package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Gaming", "gaming"},
		{"collapses punctuation", "My Cool Club!!", "my-cool-club"},
		{"trims edge hyphens", "!!DeFi Degens!!", "defi-degens"},
		{"multiple separators collapse", "a  - b", "a-b"},
		{"digits survive", "Web3 Builders", "web3-builders"},
		{"already a slug", "nft-art", "nft-art"},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}
