package commands

const (
	_etc = "/usr/local/etc/com.github.love-sandwiches"
	_var = "/usr/local/var/com.github.love-sandwiches"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)
