/*
Package markov provides a small, dependency-light toolkit for building
second-order (bigram keyed) Markov chains from text and walking them to
produce new pseudo-random text.

A Chain is built once from a word sequence with Build or BuildFromText and is
never modified afterwards, so a single Chain can be shared by any number of
concurrent walks. A Generator performs the walk, drawing every choice
uniformly from the recorded successor lists through an injectable Rand.
*/
package markov
