// Package aws provides node constructors for AWS services.
//
// Each constructor returns a detached [diagram.Node] carrying the service's
// icon identifier; attach it with Diagram.Add or Cluster.Add. Constructors
// cover the services used in cloud security architectures: ingress (WAF,
// CloudFront), compute (EC2, Lambda), identity and secrets, monitoring, and
// automation.
package aws

import (
	"github.com/cloudgram/cloudgram/pkg/diagram"
	"github.com/cloudgram/cloudgram/pkg/icons"
)

func node(category, name, label string) *diagram.Node {
	return diagram.NewNode(label, icons.New(icons.ProviderAWS, category, name))
}

// EC2 creates an Amazon EC2 instance node.
func EC2(label string) *diagram.Node { return node(icons.CategoryCompute, "ec2", label) }

// Lambda creates an AWS Lambda function node.
func Lambda(label string) *diagram.Node { return node(icons.CategoryCompute, "lambda", label) }

// CloudFront creates an Amazon CloudFront distribution node.
func CloudFront(label string) *diagram.Node { return node(icons.CategoryNetwork, "cloudfront", label) }

// Route53 creates an Amazon Route 53 node (also used for DNS Firewall).
func Route53(label string) *diagram.Node { return node(icons.CategoryNetwork, "route53", label) }

// VPC creates an Amazon VPC node.
func VPC(label string) *diagram.Node { return node(icons.CategoryNetwork, "vpc", label) }

// WAF creates an AWS WAF node.
func WAF(label string) *diagram.Node { return node(icons.CategorySecurity, "waf", label) }

// SecretsManager creates an AWS Secrets Manager node.
func SecretsManager(label string) *diagram.Node {
	return node(icons.CategorySecurity, "secrets-manager", label)
}

// IAMRole creates an AWS IAM role node.
func IAMRole(label string) *diagram.Node { return node(icons.CategorySecurity, "iam-role", label) }

// Inspector creates an Amazon Inspector node.
func Inspector(label string) *diagram.Node { return node(icons.CategorySecurity, "inspector", label) }

// GuardDuty creates an Amazon GuardDuty node.
func GuardDuty(label string) *diagram.Node { return node(icons.CategorySecurity, "guardduty", label) }

// SystemsManager creates an AWS Systems Manager node.
func SystemsManager(label string) *diagram.Node {
	return node(icons.CategoryManagement, "systems-manager", label)
}

// CloudWatch creates an Amazon CloudWatch node.
func CloudWatch(label string) *diagram.Node {
	return node(icons.CategoryManagement, "cloudwatch", label)
}

// EventBridge creates an Amazon EventBridge node.
func EventBridge(label string) *diagram.Node {
	return node(icons.CategoryIntegration, "eventbridge", label)
}
