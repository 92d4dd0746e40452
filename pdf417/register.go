package pdf417

import gridscan "github.com/avniish/gridscan"

func init() {
	gridscan.RegisterReader(gridscan.FormatPDF417, func(opts *gridscan.DecodeOptions) gridscan.Reader {
		return NewPDF417Reader()
	})
}
