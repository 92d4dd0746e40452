package aztec

import gridscan "github.com/avniish/gridscan"

func init() {
	gridscan.RegisterReader(gridscan.FormatAztec, func(opts *gridscan.DecodeOptions) gridscan.Reader {
		return NewReader()
	})
}
