package k8s

import (
	corev1 "k8s.io/api/core/v1"
)

// AllNodesReady reports whether every registered node has condition
// Ready=True. An empty node list is not ready: no node has registered yet.
func AllNodesReady(nodes []corev1.Node) bool {
	if len(nodes) == 0 {
		return false
	}
	for i := range nodes {
		if nodeReadyStatus(&nodes[i]) != corev1.ConditionTrue {
			return false
		}
	}
	return true
}

// AllNodesNotReady reports whether every registered node has condition
// Ready=False. This is the state of a freshly provisioned cluster whose
// nodes have joined the control plane but have no CNI yet. An empty node
// list does not satisfy the condition.
func AllNodesNotReady(nodes []corev1.Node) bool {
	if len(nodes) == 0 {
		return false
	}
	for i := range nodes {
		if nodeReadyStatus(&nodes[i]) != corev1.ConditionFalse {
			return false
		}
	}
	return true
}

// CountReady returns how many nodes report condition Ready=True.
func CountReady(nodes []corev1.Node) int {
	ready := 0
	for i := range nodes {
		if nodeReadyStatus(&nodes[i]) == corev1.ConditionTrue {
			ready++
		}
	}
	return ready
}

// nodeReadyStatus returns the status of the node's Ready condition, or
// ConditionUnknown when the condition is not reported at all.
func nodeReadyStatus(node *corev1.Node) corev1.ConditionStatus {
	for _, cond := range node.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			return cond.Status
		}
	}
	return corev1.ConditionUnknown
}
