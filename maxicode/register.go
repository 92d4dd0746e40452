package maxicode

import gridscan "github.com/avniish/gridscan"

func init() {
	gridscan.RegisterReader(gridscan.FormatMaxiCode, func(opts *gridscan.DecodeOptions) gridscan.Reader {
		return NewReader()
	})
}
