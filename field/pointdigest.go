// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

import "github.com/luxfi/vqchain/digest"

// DigestG1 hashes a G1 point's compressed representation, the
// `acc_value.to_digest()` operation used throughout the authenticated
// index (objects, intra-index nodes, skip-list nodes all fold an
// accumulator value into their own digest this way).
func DigestG1(p G1) digest.Digest {
	b := p.Bytes()
	return digest.Sum(b[:])
}

// DigestG2 is the G2 analogue of DigestG1.
func DigestG2(p G2) digest.Digest {
	b := p.Bytes()
	return digest.Sum(b[:])
}
