package compliance

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbv2svc "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	"github.com/gaurav-cloudops/cloud-comply/internal/audit"
)

// LoadBalancerLister lists the ARNs of all internet-facing ALBs and NLBs in
// the region. Internal load balancers are excluded: plaintext listeners on an
// internal LB never cross the internet.
func LoadBalancerLister(client ELBV2API) audit.Lister {
	return func(ctx context.Context) ([]string, error) {
		paginator := elbv2svc.NewDescribeLoadBalancersPaginator(client, &elbv2svc.DescribeLoadBalancersInput{})

		var arns []string
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, fmt.Errorf("DescribeLoadBalancers page: %w", err)
			}
			for _, lb := range page.LoadBalancers {
				if lb.Scheme != elbv2types.LoadBalancerSchemeEnumInternetFacing {
					continue
				}
				arns = append(arns, aws.ToString(lb.LoadBalancerArn))
			}
		}
		return arns, nil
	}
}

// LoadBalancerTLSOnly reports whether every listener on the load balancer
// terminates TLS (HTTPS or TLS protocol).
func LoadBalancerTLSOnly(client ELBV2API) audit.Predicate {
	return func(ctx context.Context, lbARN string) (bool, error) {
		out, err := client.DescribeListeners(ctx, &elbv2svc.DescribeListenersInput{
			LoadBalancerArn: aws.String(lbARN),
		})
		if err != nil {
			return false, fmt.Errorf("describe listeners for %s: %w", lbARN, err)
		}
		for _, l := range out.Listeners {
			switch l.Protocol {
			case elbv2types.ProtocolEnumHttps, elbv2types.ProtocolEnumTls:
				continue
			default:
				return false, nil
			}
		}
		return true, nil
	}
}
