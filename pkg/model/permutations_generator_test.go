package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstrainedPermutations(t *testing.T) {
	// Arrange
	generator := newPermutationGenerator(2, 3, 2, 5)

	t.Run("Unconstrained", func(t *testing.T) {
		// Act
		permutations := generator.ConstrainedPermutations(nil)

		// Assert
		assert.Len(t, permutations, 2*3*2*5)
		assert.Equal(t, []uint64{0, 0, 0, 0}, permutations[0])
		assert.Equal(t, []uint64{1, 2, 1, 4}, permutations[len(permutations)-1])
	})

	t.Run("Partially assigned permutations are pruned", func(t *testing.T) {
		// Act
		permutations := generator.ConstrainedPermutations([]func(permutation []uint64) bool{
			func(permutation []uint64) bool {
				return permutation[1] == math.MaxUint64 || permutation[1] == 2
			},
			func(permutation []uint64) bool {
				return permutation[3] == math.MaxUint64 || Weekday(permutation[3]) == Friday
			},
		})

		// Assert
		assert.Len(t, permutations, 2*2)
		for _, permutation := range permutations {
			assert.Equal(t, uint64(2), permutation[1])
			assert.Equal(t, uint64(Friday), permutation[3])
		}
	})
}
