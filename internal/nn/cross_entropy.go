package nn

import (
	"fmt"
	"math"
	"slices"

	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// CrossEntropyLoss computes cross-entropy loss for multi-class classification.
//
// It consumes raw logits, not probabilities. Per sample the loss is
//
//	loss = LogSumExp(logits) - logits[target]
//
// which is -log(softmax(logits)[target]) without ever materializing the
// softmax. The result is averaged over the batch.
//
// Usage:
//
//	criterion := nn.NewCrossEntropyLoss[Backend](backend)
//	logits := model.Forward(input)              // [batch_size, num_classes]
//	loss := criterion.Forward(logits, targets)  // targets: [batch_size] (class indices)
//
// The log-sum-exp is computed with a max shift, so logits far outside
// float32's exp range (|z| > 88) stay finite.
type CrossEntropyLoss[B tensor.Backend] struct {
	backend B
}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss[B tensor.Backend](backend B) *CrossEntropyLoss[B] {
	return &CrossEntropyLoss[B]{
		backend: backend,
	}
}

// Forward computes the mean loss over a batch of [batch, classes] logits
// and [batch] integer class targets, returning a scalar tensor of shape
// [1]. It panics on malformed shapes or out-of-range targets, matching
// the panic-on-misuse convention of the layer constructors.
func (c *CrossEntropyLoss[B]) Forward(
	logits *tensor.Tensor[float32, B],
	targets *tensor.Tensor[int32, B],
) *tensor.Tensor[float32, B] {
	shape := logits.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("CrossEntropyLoss: logits must be [batch, classes], got %v", shape))
	}
	batch, classes := shape[0], shape[1]

	targetIdx := targets.Raw().AsInt32()
	if len(targetIdx) != batch {
		panic(fmt.Sprintf("CrossEntropyLoss: %d targets for %d logit rows", len(targetIdx), batch))
	}

	rows := logits.Raw().AsFloat32()

	// Accumulate in float64 so large batches do not lose precision
	// to float32 rounding.
	var total float64
	for b, t := range targetIdx {
		if t < 0 || int(t) >= classes {
			panic(fmt.Sprintf("CrossEntropyLoss: target %d outside [0, %d)", t, classes))
		}
		row := rows[b*classes : (b+1)*classes]
		total += float64(logSumExp(row) - row[t])
	}

	out, err := tensor.NewRaw(tensor.Shape{1}, tensor.Float32, c.backend.Device())
	if err != nil {
		panic(err)
	}
	out.AsFloat32()[0] = float32(total / float64(batch))

	return tensor.New[float32, B](out, c.backend)
}

// Parameters returns an empty slice (loss functions have no parameters).
func (c *CrossEntropyLoss[B]) Parameters() []*Parameter[B] {
	return nil
}

// logSumExp computes log(Σ exp(z[i])) with a max shift so the
// exponentials cannot overflow:
//
//	LogSumExp(z) = max(z) + log(Σ exp(z[i] - max(z)))
func logSumExp(z []float32) float32 {
	maxZ := slices.Max(z)
	var sum float64
	for _, v := range z {
		sum += math.Exp(float64(v - maxZ))
	}
	return maxZ + float32(math.Log(sum))
}
