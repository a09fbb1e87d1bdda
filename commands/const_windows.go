package commands

const (
	_workdir = `C:\ProgramData\love-sandwiches`

	DEFAULT_WORKDIR     = _workdir
	DEFAULT_CREDENTIALS = _workdir + `\.google\credentials.json`
)
