package datamatrix

import gridscan "github.com/avniish/gridscan"

func init() {
	gridscan.RegisterReader(gridscan.FormatDataMatrix, func(opts *gridscan.DecodeOptions) gridscan.Reader {
		return NewReader()
	})
}
