package oned

import gridscan "github.com/avniish/gridscan"

func init() {
	// Register all 1D readers via the multi-format 1D reader.
	oneDReaderFactory := func(opts *gridscan.DecodeOptions) gridscan.Reader {
		return NewMultiFormatOneDReader(opts)
	}
	gridscan.RegisterReader(gridscan.FormatCode128, oneDReaderFactory)
	gridscan.RegisterReader(gridscan.FormatCode39, oneDReaderFactory)
	gridscan.RegisterReader(gridscan.FormatEAN13, oneDReaderFactory)
	gridscan.RegisterReader(gridscan.FormatEAN8, oneDReaderFactory)
	gridscan.RegisterReader(gridscan.FormatUPCA, oneDReaderFactory)
	gridscan.RegisterReader(gridscan.FormatUPCE, oneDReaderFactory)
	gridscan.RegisterReader(gridscan.FormatITF, oneDReaderFactory)
	gridscan.RegisterReader(gridscan.FormatCodabar, oneDReaderFactory)
	gridscan.RegisterReader(gridscan.FormatRSS14, oneDReaderFactory)
	gridscan.RegisterReader(gridscan.FormatRSSExpanded, oneDReaderFactory)
	gridscan.RegisterReader(gridscan.FormatCode93, oneDReaderFactory)
}
