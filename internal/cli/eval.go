package cli

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/bijector/internal/backend/cpu"
	"github.com/born-ml/bijector/internal/tensor"
	"github.com/born-ml/bijector/internal/transform"
)

// evalCommand builds forward, backward or jacdet.
func (c *CLI) evalCommand(op, short string) *cobra.Command {
	var spec, value string

	cmd := &cobra.Command{
		Use:   op,
		Short: short,
		Example: fmt.Sprintf("  bijector %s --transform 'stickbreaking' --value '[0.2, -1.0]'\n"+
			"  bijector %s --transform 'interval(0,1)' --value '[[0.1], [0.9]]'", op, op),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			logger := loggerFromContext(cmd.Context())

			t, err := transform.Parse(spec)
			if err != nil {
				return err
			}
			x, err := parseValue(value)
			if err != nil {
				return err
			}

			defer func() {
				if r := recover(); r != nil {
					err = errors.Errorf("%s %s: %v", t.Name(), op, r)
				}
			}()

			var out *tensor.Tensor
			switch op {
			case "forward":
				out, err = t.Forward(x)
			case "backward":
				out, err = t.Backward(x)
			default:
				out, err = t.JacobianDet(x)
			}
			if err != nil {
				return err
			}
			logger.Debug("evaluated", "transform", t.Name(), "op", op, "in", x.Shape(), "out", out.Shape())

			b, err := json.Marshal(toNested(out))
			if err != nil {
				return errors.Wrap(err, "encode result")
			}
			_, err = fmt.Fprintln(c.out, string(b))
			return err
		},
	}
	cmd.Flags().StringVarP(&spec, "transform", "t", "", "transform spec, e.g. 'stickbreaking+interval(0,1)'")
	cmd.Flags().StringVar(&value, "value", "", "value as a JSON or YAML number or nested array")
	_ = cmd.MarkFlagRequired("transform")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

// parseValue decodes a number or a rectangular nested array into a tensor.
func parseValue(s string) (*tensor.Tensor, error) {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, errors.Wrap(err, "parse value")
	}
	shape := inferShape(v)
	data := make([]float64, 0, shape.NumElements())
	if err := collect(v, shape, &data); err != nil {
		return nil, errors.WithMessage(err, "parse value")
	}
	return tensor.FromSlice(data, shape, cpu.New())
}

// inferShape follows the first element at every nesting level.
func inferShape(v any) tensor.Shape {
	shape := tensor.Shape{}
	for {
		list, ok := v.([]any)
		if !ok {
			return shape
		}
		shape = append(shape, len(list))
		if len(list) == 0 {
			return shape
		}
		v = list[0]
	}
}

func collect(v any, shape tensor.Shape, data *[]float64) error {
	if len(shape) == 0 {
		f, ok := number(v)
		if !ok {
			return errors.Errorf("%v is not a number", v)
		}
		*data = append(*data, f)
		return nil
	}
	list, ok := v.([]any)
	if !ok || len(list) != shape[0] {
		return errors.Errorf("ragged array: expected %d elements at %v", shape[0], v)
	}
	for _, e := range list {
		if err := collect(e, shape[1:], data); err != nil {
			return err
		}
	}
	return nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// toNested converts t into nested slices for JSON. Non-finite values become
// the strings "NaN", "+Inf" and "-Inf".
func toNested(t *tensor.Tensor) any {
	data := t.Data()
	shape := t.Shape()
	var build func(dim, offset int) any
	build = func(dim, offset int) any {
		if dim == len(shape) {
			return jsonNumber(data[offset])
		}
		stride := shape[dim+1:].NumElements()
		out := make([]any, shape[dim])
		for i := range out {
			out[i] = build(dim+1, offset+i*stride)
		}
		return out
	}
	return build(0, 0)
}

func jsonNumber(v float64) any {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	default:
		return v
	}
}
