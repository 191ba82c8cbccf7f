package application

import (
	// hashers selectable by name in configs and evidence
	_ "github.com/0xcert/framework-sub004/crypto/hasher/blake3"
	_ "github.com/0xcert/framework-sub004/crypto/hasher/keccak"
	_ "github.com/0xcert/framework-sub004/crypto/hasher/sha256"
	_ "github.com/0xcert/framework-sub004/crypto/hasher/sha3"
)
