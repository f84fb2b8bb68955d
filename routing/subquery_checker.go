/*
 * Copyright 2021. Go-Sharding Author All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 *  File author: Anders Xiao
 */

package routing

// checkSubqueries routes every nested occurrence of a sharded table on its own and requires
// the same data nodes as the outer occurrences, a mismatch rejects the whole statement.
func (s *statementRouter) checkSubqueries(table string) error {
	occurrences := s.occurrences[table]
	nested := occurrences[len(s.outerOccurrences(table)):]
	if len(nested) == 0 {
		return nil
	}
	outer, err := s.routeTable(table)
	if err != nil {
		return err
	}
	outerTargets := outer.Targets()
	t, _ := s.rule.TableRule(table)
	for _, ref := range nested {
		ctx, err := s.engine.Route(t, ref.values(), s.hints)
		if err != nil {
			return err
		}
		nestedTargets := ctx.Targets()
		if !outerTargets.IsEqual(nestedTargets) {
			logger.Debugf("subquery of scope %d routes table '%s' inconsistently: outer %v, nested %v", ref.Scope, table, outerTargets, nestedTargets)
			return newRoutingInconsistencyError(table, outerTargets, nestedTargets)
		}
	}
	return nil
}
