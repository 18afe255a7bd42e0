package dto

// DownloadRequest is the full device-and-version key a printer presents to
// fetch its archive. build_number matches Build.Version by exact string
// equality.
type DownloadRequest struct {
	PrinterType string `json:"printer_type"`
	SubType     string `json:"sub_type"`
	Make        string `json:"make"`
	BuildNumber string `json:"build_number"`
}

func (r DownloadRequest) Complete() bool {
	return r.PrinterType != "" && r.SubType != "" && r.Make != "" && r.BuildNumber != ""
}

// BuildDetailsRequest carries the combined "<printer_type> <sub_type> <make>"
// profile string a device reports about itself.
type BuildDetailsRequest struct {
	PrinterDetails string `json:"printerDetails"`
}
