package commands

const (
	_etc = "/usr/local/etc/love-sandwiches"
	_var = "/usr/local/var/love-sandwiches"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)
