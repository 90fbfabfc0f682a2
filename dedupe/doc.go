/*
Package dedupe holds the fingerprint set used by the disjoin and dedup engines.

Unlike a fixed size lookup table, the set never evicts: once a fingerprint is added it stays
for the life of the set, so memory grows with the number of distinct records seen
(roughly 8 bytes per fingerprint plus map overhead).

Membership is decided on 64-bit fingerprints only. Two different records that share a
fingerprint are treated as the same record. The expected number of such false merges for N
distinct records is about N^2/2^65:

* 10mil records: 1:370k chance of any collision
* 100mil records: 1:3.7k chance of any collision
* 1bil records: 1:37 chance of any collision

In disjoin mode a collision removes a keep record that was not in the remove set; in dedup
mode it drops a record that was not a true duplicate.
*/
package dedupe
