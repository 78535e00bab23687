// SPDX-License-Identifier: GPL-3.0-only

package commons

const (
	AppName    = "arvai-server"
	AppVersion = "0.1.0"
)
